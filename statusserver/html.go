package statusserver

const htmlBody = `<html>
<head>
<title>piclock status</title>
<script src="/static/api.js"></script>
</head>
<body onload="initPage()">
<h1>piclock</h1>
<h4>Alarm clock status</h4>
<div id="statusDiv"></div>
</body>
</html>
`

const apiScript = `var initPage = function() {
  var statusDiv = document.getElementById("statusDiv");
  statusDiv.textContent = "...";

  fetch("/api/status").then(function(response) {
    if (!response.ok) {
      throw new Error("status request failed: " + response.status);
    }
    return response.json();
  }).then(function(data) {
    console.log(data);
    statusDiv.textContent = data.response + (!!data.error ? ": " + data.error : "");
  }, function(failure) {
    console.log(failure);
  });
};
`
